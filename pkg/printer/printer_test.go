package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(Config{Type: "none"})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())
	assert.False(t, p.Connected())

	_, err = New(Config{Type: "usb"})
	assert.Error(t, err)
	_, err = New(Config{Type: "network"})
	assert.Error(t, err)
	_, err = New(Config{Type: "bluetooth"})
	assert.ErrorContains(t, err, "unknown printer type")

	p, err = New(Config{Type: "network", Address: "127.0.0.1:9100"})
	require.NoError(t, err)
	assert.Equal(t, "network", p.Kind())
}

func TestBufferKeepsLastJob(t *testing.T) {
	b := &Buffer{}
	require.NoError(t, b.Print([]byte("one")))
	require.NoError(t, b.Print([]byte("two")))
	assert.Equal(t, []byte("two"), b.Last())
	assert.Equal(t, 2, b.Jobs())
}

func TestColumns(t *testing.T) {
	d := NewDocument(20)
	d.Columns("Subtotal:", "130.00")
	assert.True(t, bytes.HasSuffix(d.Bytes(), []byte("Subtotal:     130.00\n")))

	d = NewDocument(12)
	d.Columns("A very long product", "9.00")
	assert.True(t, bytes.HasSuffix(d.Bytes(), []byte("A very. 9.00\n")))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"Thank you", "for your", "business!"}, wrap("Thank you for your business!", 9))
	assert.Equal(t, []string{"abcde", "fgh"}, wrap("abcdefgh", 5))
	assert.Nil(t, wrap("   ", 5))
}

func TestDocumentStartsWithInit(t *testing.T) {
	d := NewDocument(0)
	assert.Equal(t, 32, d.Width())
	assert.Equal(t, []byte{ESC, '@'}, d.Bytes()[:2])
	d.Cut()
	assert.Equal(t, []byte{GS, 'V', 0x01}, d.Bytes()[len(d.Bytes())-3:])
}
