package java

import "path/filepath"

// pathBuf is a reusable path. push appends a segment and returns a mark;
// pop restores the buffer to that mark.
type pathBuf struct {
	b []byte
}

func newPathBuf(base string) *pathBuf {
	b := make([]byte, len(base), len(base)+64)
	copy(b, base)
	return &pathBuf{b: b}
}

func (p *pathBuf) push(segment string) int {
	mark := len(p.b)
	if mark > 0 && p.b[mark-1] != filepath.Separator && p.b[mark-1] != '/' {
		p.b = append(p.b, filepath.Separator)
	}
	p.b = append(p.b, segment...)
	return mark
}

func (p *pathBuf) pop(mark int) {
	p.b = p.b[:mark]
}

func (p *pathBuf) String() string {
	return string(p.b)
}
