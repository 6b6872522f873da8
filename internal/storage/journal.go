package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vovakirdan/starfall/internal/core"
)

// Input journals are run-length encoded: a sequence of (mask, run) uvarint
// pairs, where run is the number of consecutive ticks sharing mask. Held
// directions repeat for long stretches, so runs stay short.

var errTruncated = errors.New("truncated input journal")

// EncodeInputs packs per-tick frames into a journal blob.
func EncodeInputs(frames []core.InputFrame) []byte {
	buf := make([]byte, 0, 16)
	for i := 0; i < len(frames); {
		mask := frames[i].Mask()
		run := 1
		for i+run < len(frames) && frames[i+run].Mask() == mask {
			run++
		}
		buf = binary.AppendUvarint(buf, uint64(mask))
		buf = binary.AppendUvarint(buf, uint64(run))
		i += run
	}
	return buf
}

// DecodeInputs unpacks a journal blob.
func DecodeInputs(blob []byte) ([]core.InputFrame, error) {
	var out []core.InputFrame
	for len(blob) > 0 {
		mask, n := binary.Uvarint(blob)
		if n <= 0 {
			return nil, errTruncated
		}
		blob = blob[n:]
		run, n := binary.Uvarint(blob)
		if n <= 0 {
			return nil, errTruncated
		}
		blob = blob[n:]
		if mask > 0xffff || run == 0 {
			return nil, fmt.Errorf("corrupt input journal: mask %#x run %d", mask, run)
		}
		f := core.FrameFromMask(uint16(mask))
		for j := uint64(0); j < run; j++ {
			out = append(out, f)
		}
	}
	return out, nil
}
