package gba

// RAM is a bounded, zero-initialized byte array with little-endian
// multi-width access. It backs BoardWram (256 KiB) and ChipWram (32 KiB);
// mirroring is the caller's (System bus's) responsibility via region.go.
//
// Grounded on the teacher's internal/memory/ewram.go and iwram.go, which
// had this exact shape (data []byte, Read8/Write8) but no multi-width
// accessors and no width-generic API.
type RAM struct {
	data []byte
}

// NewRAM allocates a zeroed RAM block of the given size.
func NewRAM(size int) *RAM {
	return &RAM{data: make([]byte, size)}
}

func (r *RAM) Read8(offset uint32) uint8 {
	return r.data[int(offset)%len(r.data)]
}

func (r *RAM) Write8(offset uint32, value uint8) {
	r.data[int(offset)%len(r.data)] = value
}

func (r *RAM) Read16(offset uint32) uint16 {
	o := int(offset) % len(r.data)
	return uint16(r.data[o]) | uint16(r.data[(o+1)%len(r.data)])<<8
}

func (r *RAM) Write16(offset uint32, value uint16) {
	o := int(offset) % len(r.data)
	r.data[o] = byte(value)
	r.data[(o+1)%len(r.data)] = byte(value >> 8)
}

func (r *RAM) Read32(offset uint32) uint32 {
	o := int(offset) % len(r.data)
	n := len(r.data)
	return uint32(r.data[o]) |
		uint32(r.data[(o+1)%n])<<8 |
		uint32(r.data[(o+2)%n])<<16 |
		uint32(r.data[(o+3)%n])<<24
}

func (r *RAM) Write32(offset uint32, value uint32) {
	o := int(offset) % len(r.data)
	n := len(r.data)
	r.data[o] = byte(value)
	r.data[(o+1)%n] = byte(value >> 8)
	r.data[(o+2)%n] = byte(value >> 16)
	r.data[(o+3)%n] = byte(value >> 24)
}

// Bytes exposes the backing slice for save-state serialization.
func (r *RAM) Bytes() []byte { return r.data }

// Load restores the backing slice from a save state, copying the
// shorter of the two lengths and zeroing the rest of the block.
func (r *RAM) Load(data []byte) {
	n := copy(r.data, data)
	for i := n; i < len(r.data); i++ {
		r.data[i] = 0
	}
}
