package gba

// audioBlockSize is the largest block AudioSink.PushSamples accepts at
// once (§6 "pulls stereo f32 samples... in blocks of at most 256").
const audioBlockSize = 256

// masterClocksPerSample derives the documented 32768 Hz sample rate
// from the master clock rate: 16*1024*1024 / 32768 = 512.
const masterClocksPerSample = cyclesPerSecond / 32768

// fifoRefillSamples is how many generated samples correspond to one
// FIFO-depth's worth of playback, used to pace the SoundFifo DMA
// trigger (§4.5; SPEC_FULL.md supplement #3).
const fifoRefillSamples = 32

// APU is the minimal stub sound producer spec.md §9 names explicitly
// ("audio is stubbed... outputs a 32-Hz square wave on channel-test
// path; a full audio DSP is out of scope", consistent with §1's
// Non-goals). It does not synthesize the four real GBA sound channels;
// it only exercises the documented external AudioSink contract and the
// SoundFifo DMA trigger path.
//
// Grounded on original_source's src/io/spu/mod.rs Spu::cycle: a
// free-running sample index wrapping at 1024, which at 32768 Hz yields
// exactly 32 Hz — the source's edge-only buffer push (at idx 0 and 512)
// is generalized here to a continuously-held high/low value so the
// sink actually receives a square wave rather than two samples and then
// silence every cycle.
type APU struct {
	dma *DMAEngine

	clock int
	idx   int
	buf   [][2]float32
}

// NewAPU wires the DMA engine used to pace channel 1/2's FIFO reload.
func NewAPU(dma *DMAEngine) *APU {
	return &APU{dma: dma}
}

// Tick advances the master clock; every 512 clocks (one sample period)
// it appends a stereo frame to the pending buffer and, every 32
// samples, triggers a SoundFifo DMA reload.
func (a *APU) Tick() {
	a.clock++
	if a.clock < masterClocksPerSample {
		return
	}
	a.clock = 0

	v := float32(0.5)
	if a.idx >= 512 {
		v = -0.5
	}
	a.idx = (a.idx + 1) % 1024
	a.buf = append(a.buf, [2]float32{v, v})

	if len(a.buf)%fifoRefillSamples == 0 {
		a.dma.Trigger(TriggerSoundFifo)
	}
}

// Drain pushes every buffered sample to the host sink in blocks of at
// most 256 frames (§6), called once per frame by the tick scheduler.
// With sink == nil (headless/no-audio hosts) the buffer is dropped.
func (a *APU) Drain(sink AudioSink) {
	if sink == nil {
		a.buf = a.buf[:0]
		return
	}
	for len(a.buf) > 0 {
		n := audioBlockSize
		if n > len(a.buf) {
			n = len(a.buf)
		}
		sink.PushSamples(a.buf[:n])
		a.buf = a.buf[n:]
	}
}
