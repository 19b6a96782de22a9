package tzif

import (
	"encoding/binary"
	"fmt"
)

const (
	headerSize = 44
	magic      = "TZif"

	maxTransitions      = 200_000
	maxLocalTypes       = 255
	maxDesignationBytes = 16_384
	maxLeapSeconds      = 2_000
)

// header is the 44-byte TZif header: 4-byte magic, 1-byte version, 15
// reserved bytes, then six 32-bit big-endian counts.
type header struct {
	version    byte
	isUTCount  uint32
	isStdCount uint32
	leapCount  uint32
	timeCount  uint32
	typeCount  uint32
	charCount  uint32
}

func parseHeader(b []byte) (header, error) {
	if len(b) < headerSize {
		return header{}, fmt.Errorf("%w: header truncated", ErrInvalidLength)
	}

	if string(b[0:4]) != magic {
		return header{}, ErrMagicMismatch
	}

	version := b[4]
	if version != 0 && version != '2' && version != '3' && version != '4' {
		return header{}, &UnsupportedFileVersionError{Version: version}
	}

	h := header{
		version:    version,
		isUTCount:  binary.BigEndian.Uint32(b[20:24]),
		isStdCount: binary.BigEndian.Uint32(b[24:28]),
		leapCount:  binary.BigEndian.Uint32(b[28:32]),
		timeCount:  binary.BigEndian.Uint32(b[32:36]),
		typeCount:  binary.BigEndian.Uint32(b[36:40]),
		charCount:  binary.BigEndian.Uint32(b[40:44]),
	}

	if h.timeCount > maxTransitions {
		return header{}, fmt.Errorf("%w: %d transitions", ErrFieldLimitExceeded, h.timeCount)
	}

	if h.typeCount == 0 || h.typeCount > maxLocalTypes {
		return header{}, fmt.Errorf("%w: %d local-time types", ErrFieldLimitExceeded, h.typeCount)
	}

	if h.charCount > maxDesignationBytes {
		return header{}, fmt.Errorf("%w: %d designation bytes", ErrFieldLimitExceeded, h.charCount)
	}

	if h.leapCount > maxLeapSeconds {
		return header{}, fmt.Errorf("%w: %d leap seconds", ErrFieldLimitExceeded, h.leapCount)
	}

	if h.isStdCount != 0 && h.isStdCount != h.typeCount {
		return header{}, ErrStdOrUniversalCountMismatch
	}

	if h.isUTCount != 0 && h.isUTCount != h.typeCount {
		return header{}, ErrStdOrUniversalCountMismatch
	}

	return h, nil
}

// localTimeType is one entry of the time-type table: the header record
// shared by every transition that resolves to it.
type localTimeType struct {
	utOffset         int32
	isDST            bool
	designationIndex byte
	isStd            bool
	isUT             bool
}

// dataBlock is the decoded body following one header, either the v1
// 32-bit block or a v2+ 64-bit block.
type dataBlock struct {
	transitionTimes []int64
	transitionTypes []byte
	types           []localTimeType
	designations    []byte
	leapSeconds     []leapSecondRecord
}

type leapSecondRecord struct {
	occurrence int64
	correction int32
}

// parseV1Block decodes the 32-bit data block immediately following the
// 44-byte v1 header.
func parseV1Block(h header, b []byte) (dataBlock, int, error) {
	return parseBlock(h, b, 4)
}

// parseV2Block decodes the 64-bit data block immediately following a
// second 44-byte header (the v2+ layout).
func parseV2Block(h header, b []byte) (dataBlock, int, error) {
	return parseBlock(h, b, 8)
}

func parseBlock(h header, b []byte, timeWidth int) (dataBlock, int, error) {
	off := 0

	need := func(n int) error {
		if off+n > len(b) {
			return fmt.Errorf("%w: data block truncated", ErrInvalidLength)
		}

		return nil
	}

	if err := need(int(h.timeCount) * timeWidth); err != nil {
		return dataBlock{}, 0, err
	}

	times := make([]int64, h.timeCount)

	for i := range times {
		if timeWidth == 4 {
			times[i] = int64(int32(binary.BigEndian.Uint32(b[off:])))
		} else {
			times[i] = int64(binary.BigEndian.Uint64(b[off:]))
		}

		off += timeWidth

		if i > 0 && times[i] <= times[i-1] {
			return dataBlock{}, 0, ErrTransitionsNotOrdered
		}
	}

	if err := need(int(h.timeCount)); err != nil {
		return dataBlock{}, 0, err
	}

	types := make([]byte, h.timeCount)
	copy(types, b[off:off+int(h.timeCount)])
	off += int(h.timeCount)

	if err := need(int(h.typeCount) * 6); err != nil {
		return dataBlock{}, 0, err
	}

	localTypes := make([]localTimeType, h.typeCount)

	for i := range localTypes {
		localTypes[i].utOffset = int32(binary.BigEndian.Uint32(b[off:]))
		off += 4
		localTypes[i].isDST = b[off] != 0
		off++
		localTypes[i].designationIndex = b[off]
		off++
	}

	for _, t := range types {
		if int(t) >= len(localTypes) {
			return dataBlock{}, 0, ErrTypeIndexOutOfBounds
		}
	}

	if err := need(int(h.charCount)); err != nil {
		return dataBlock{}, 0, err
	}

	designations := make([]byte, h.charCount)
	copy(designations, b[off:off+int(h.charCount)])
	off += int(h.charCount)

	leapWidth := timeWidth + 4

	if err := need(int(h.leapCount) * leapWidth); err != nil {
		return dataBlock{}, 0, err
	}

	leaps := make([]leapSecondRecord, h.leapCount)

	for i := range leaps {
		if timeWidth == 4 {
			leaps[i].occurrence = int64(int32(binary.BigEndian.Uint32(b[off:])))
		} else {
			leaps[i].occurrence = int64(binary.BigEndian.Uint64(b[off:]))
		}

		off += timeWidth
		leaps[i].correction = int32(binary.BigEndian.Uint32(b[off:]))
		off += 4
	}

	if err := need(int(h.isStdCount)); err != nil {
		return dataBlock{}, 0, err
	}

	isStd := make([]bool, h.typeCount)
	for i := 0; i < int(h.isStdCount); i++ {
		isStd[i] = b[off+i] != 0
	}

	off += int(h.isStdCount)

	if err := need(int(h.isUTCount)); err != nil {
		return dataBlock{}, 0, err
	}

	isUT := make([]bool, h.typeCount)
	for i := 0; i < int(h.isUTCount); i++ {
		isUT[i] = b[off+i] != 0
	}

	off += int(h.isUTCount)

	for i := range localTypes {
		localTypes[i].isStd = isStd[i]
		localTypes[i].isUT = isUT[i]

		if localTypes[i].isUT && !localTypes[i].isStd {
			return dataBlock{}, 0, ErrWallStdUniversalDisagreement
		}
	}

	return dataBlock{
		transitionTimes: times,
		transitionTypes: types,
		types:           localTypes,
		designations:    designations,
		leapSeconds:     leaps,
	}, off, nil
}

// designationAt extracts the null-terminated designation string starting
// at byte index idx of the designation table, by index rather than
// sequential scan.
func designationAt(table []byte, idx byte) (string, error) {
	start := int(idx)
	if start >= len(table) {
		return "", ErrInvalidDesignation
	}

	end := start

	for end < len(table) && table[end] != 0 {
		end++
	}

	if end == len(table) {
		return "", ErrInvalidDesignation
	}

	return string(table[start:end]), nil
}
