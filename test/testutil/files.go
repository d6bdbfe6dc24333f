package testutil

import "bytes"

// GenerateMP4 produces a byte payload that looks like the start of an MP4
// file, padded to the requested size. The transcoding pipeline only copies
// bytes, so a real encode is not needed.
func GenerateMP4(size int) []byte {
	header := []byte{
		0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
	}
	buf := bytes.NewBuffer(header)
	if buf.Len() < size {
		buf.Write(make([]byte, size-buf.Len()))
	}
	return buf.Bytes()
}
