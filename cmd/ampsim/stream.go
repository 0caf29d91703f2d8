package main

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cwbudde/algo-amp/amp"
)

// stream renders a source through a pipeline on demand as interleaved
// little-endian float32 frames. The pipeline latency is skipped and tail
// frames follow the end of the source.
type stream struct {
	p     *amp.Pipeline
	src   [][]float64
	block [][]float64
	buf   []byte

	pending []byte
	pos     int
	end     int
	lat     int
}

func newStream(p *amp.Pipeline, src [][]float64, blockSize, tail int) *stream {
	s := &stream{
		p:     p,
		src:   src,
		block: make([][]float64, len(src)),
		buf:   make([]byte, blockSize*len(src)*4),
		lat:   p.Latency(),
	}

	for c := range s.block {
		s.block[c] = make([]float64, blockSize)
	}

	if len(src) > 0 {
		s.end = len(src[0]) + tail + s.lat
	}

	return s
}

// Frames returns the number of frames Read delivers in total.
func (s *stream) Frames() int {
	return max(s.end-s.lat, 0)
}

func (s *stream) Read(p []byte) (int, error) {
	written := 0

	for written < len(p) {
		if len(s.pending) == 0 {
			if s.pos >= s.end {
				break
			}

			if err := s.next(); err != nil {
				return written, err
			}

			continue
		}

		k := copy(p[written:], s.pending)
		s.pending = s.pending[k:]
		written += k
	}

	if written == 0 && len(p) > 0 {
		return 0, io.EOF
	}

	return written, nil
}

func (s *stream) next() error {
	n := len(s.src[0])
	m := min(len(s.block[0]), s.end-s.pos)

	for c := range s.block {
		buf := s.block[c][:m]
		clear(buf)

		if s.pos < n {
			copy(buf, s.src[c][s.pos:min(s.pos+m, n)])
		}
	}

	if err := s.p.Process(s.block, len(s.block), m); err != nil {
		return err
	}

	skip := max(s.lat-s.pos, 0)
	s.pos += m

	out := s.buf[:0]
	for i := skip; i < m; i++ {
		for c := range s.block {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(s.block[c][i])))
		}
	}

	s.pending = out

	return nil
}
