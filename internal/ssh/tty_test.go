package ssh

import (
	"bytes"
	"io"
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	in     *bytes.Buffer
	out    bytes.Buffer
	closed bool
}

func (f *fakeChannel) Read(b []byte) (int, error)  { return f.in.Read(b) }
func (f *fakeChannel) Write(b []byte) (int, error) { return f.out.Write(b) }
func (f *fakeChannel) Close() error                { f.closed = true; return nil }

var _ io.ReadWriteCloser = (*fakeChannel)(nil)

func TestSessionTtyPassesBytesThrough(t *testing.T) {
	ch := &fakeChannel{in: bytes.NewBufferString("q")}
	tty := NewSessionTty(ch, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, nil)

	buf := make([]byte, 4)
	n, err := tty.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "q", string(buf[:n]))

	_, err = tty.Write([]byte("frame"))
	require.NoError(t, err)
	assert.Equal(t, "frame", ch.out.String())

	require.NoError(t, tty.Close())
	assert.True(t, ch.closed)
}

func TestSessionTtyFollowsResizes(t *testing.T) {
	resizes := make(chan gossh.Window)
	tty := NewSessionTty(&fakeChannel{in: &bytes.Buffer{}}, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, resizes)

	size, err := tty.WindowSize()
	require.NoError(t, err)
	assert.Equal(t, 80, size.Width)

	called := make(chan struct{}, 1)
	tty.NotifyResize(func() { called <- struct{}{} })
	tty.NotifyResize(func() { called <- struct{}{} })

	resizes <- gossh.Window{Width: 120, Height: 40}
	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("resize callback not invoked")
	}
	size, _ = tty.WindowSize()
	assert.Equal(t, 120, size.Width)
	assert.Equal(t, 40, size.Height)
	close(resizes)
}
