package shardkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringKey(t *testing.T) {
	is := assert.New(t)

	is.Equal(Key("user_001"), StringKey("user_001"))
	is.Equal(Key(""), StringKey(""))
	is.Equal(Key("héllo"), StringKey("héllo"))
}

func TestBytesKey(t *testing.T) {
	is := assert.New(t)

	is.Equal(Key{0x00, 0x01, 0xff}, BytesKey([]byte{0x00, 0x01, 0xff}))
	is.Equal(Key("raw"), BytesKey([]byte("raw")))
}

func TestIntKey(t *testing.T) {
	is := assert.New(t)

	is.Equal(Key("123"), IntKey(123))
	is.Equal(Key("0"), IntKey(0))
	is.Equal(Key("-42"), IntKey(-42))
	is.Equal(Key("9223372036854775807"), IntKey(9223372036854775807))

	// An integer key always routes like its decimal string form.
	is.Equal(StringKey("123"), IntKey(123))
}
