package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrim0xPrefix(t *testing.T) {
	assert.Equal(t, "abcd", Trim0xPrefix("0xabcd"))
	assert.Equal(t, "abcd", Trim0xPrefix("0Xabcd"))
	assert.Equal(t, "abcd", Trim0xPrefix("abcd"))
}

func TestPrepend0xPrefix(t *testing.T) {
	assert.Equal(t, "0xabcd", Prepend0xPrefix("abcd"))
	assert.Equal(t, "0xabcd", Prepend0xPrefix("0xabcd"))
}

func TestHexStrToBytes32RoundTrip(t *testing.T) {
	b := RandBytes32()
	hexStr := Prepend0xPrefix(ByteSliceToPureHexStr(b[:]))
	assert.Equal(t, b, HexStrToBytes32(hexStr))
}

func TestShorten(t *testing.T) {
	long := "0x11d49f96de0e1d685f2f8dcb6db35c0db92c2a4be423ca365d2a12bc39d9255f"
	short := Shorten(long, 4)
	assert.Equal(t, "0x11d4...255f", short)

	// short strings come back whole
	assert.Equal(t, "0xabcd", Shorten("0xabcd", 4))
}
