// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer adapts the channel layout of src to a fixed output channel
// count. Folding down averages the source channels that map onto each output
// channel, spreading up repeats source channels round-robin (mono becomes
// the same signal on every output channel).
type ChannelMixer struct {
	src Source
	out int
	tmp []float32
}

func NewChannelMixer(src Source, outChannels int) *ChannelMixer {
	return &ChannelMixer{
		src: src,
		out: outChannels,
		tmp: make([]float32, 4096),
	}
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.out <= 0 || len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	samplesNeeded := frames * in
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / in

	switch {
	case m.out == 1 && in == 2:
		for f := range got {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	case in == 1:
		for f := range got {
			v := m.tmp[f]
			for c := range m.out {
				dst[f*m.out+c] = v
			}
		}
	case in < m.out:
		for f := range got {
			for c := range m.out {
				dst[f*m.out+c] = m.tmp[f*in+c%in]
			}
		}
	default:
		// in > out: output channel c is the mean of inputs c, c+out, c+2*out...
		for f := range got {
			base := f * in
			for c := range m.out {
				var sum float32
				count := 0
				for k := c; k < in; k += m.out {
					sum += m.tmp[base+k]
					count++
				}
				dst[f*m.out+c] = sum / float32(count)
			}
		}
	}

	return got * m.out, err
}
