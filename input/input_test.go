package input

import "testing"

func TestMakeBuffers(t *testing.T) {
	bufs := MakeBuffers(2, 1024)

	if len(bufs) != 2 {
		t.Fatalf("channel count = %d, expected 2", len(bufs))
	}

	for idx, channel := range bufs {
		if len(channel) != 1024 {
			t.Errorf("channel %d length = %d, expected 1024", idx, len(channel))
		}
	}
}

func TestEnsureBufferLen(t *testing.T) {
	cfg := SessionConfig{FrameSize: 2, SampleSize: 512}

	if !EnsureBufferLen(cfg, MakeBuffers(2, 512)) {
		t.Error("matching buffers rejected")
	}

	if EnsureBufferLen(cfg, MakeBuffers(1, 512)) {
		t.Error("wrong channel count accepted")
	}

	if EnsureBufferLen(cfg, MakeBuffers(2, 256)) {
		t.Error("wrong sample count accepted")
	}
}

func TestCopyBuffers(t *testing.T) {
	src := MakeBuffers(2, 4)
	dst := MakeBuffers(2, 4)

	for ch := range src {
		for idx := range src[ch] {
			src[ch][idx] = Sample(ch*10 + idx)
		}
	}

	CopyBuffers(dst, src)

	for ch := range dst {
		for idx := range dst[ch] {
			if dst[ch][idx] != src[ch][idx] {
				t.Fatalf("dst[%d][%d] = %f, expected %f", ch, idx, dst[ch][idx], src[ch][idx])
			}
		}
	}

	src[0][0] = 99
	if dst[0][0] == 99 {
		t.Error("copy should not alias the source")
	}
}

type stubBackend struct{ Backend }

func TestBackendRegistry(t *testing.T) {
	RegisterBackend("test-backend", stubBackend{})

	if !HasBackend("test-backend") {
		t.Error("registered backend not found")
	}

	if HasBackend("no-such-backend") {
		t.Error("unknown backend reported as present")
	}

	if _, err := InitBackend("no-such-backend"); err == nil {
		t.Error("InitBackend should fail for an unknown backend")
	}
}
