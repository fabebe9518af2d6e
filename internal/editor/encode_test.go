package editor

import (
	"bytes"
	"testing"
)

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(gradient(16, 8))
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("output does not start with the PNG signature")
	}
}

func TestEncodeBMP(t *testing.T) {
	data, err := EncodeBMP(gradient(16, 8))
	if err != nil {
		t.Fatalf("EncodeBMP: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("BM")) {
		t.Errorf("output does not start with the BMP signature")
	}
}
