package common

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	logger "github.com/sirupsen/logrus"
)

// EncodePacked builds a solidity abi.encodePacked style byte string out of
// the value types the bridge id preimages use. Integers are big-endian
// fixed-width, addresses and hashes contribute their raw bytes, strings with
// a 0x prefix are hex-decoded and plain strings are taken verbatim.
func EncodePacked(values ...interface{}) []byte {
	var res [][]byte
	for _, value := range values {
		switch v := value.(type) {
		case string:
			res = append(res, encodeString(v))
		case []byte:
			res = append(res, v)
		case [32]byte:
			res = append(res, v[:])
		case uint64:
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], v)
			res = append(res, b[:])
		case uint32:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], v)
			res = append(res, b[:])
		case ethcommon.Hash:
			res = append(res, v[:])
		case ethcommon.Address:
			res = append(res, v[:])
		}
	}
	return bytes.Join(res, nil)
}

func encodeString(v string) []byte {
	if strings.HasPrefix(v, "0x") {
		return encodeHexString(v)
	}
	return []byte(v)
}

func encodeHexString(v string) []byte {
	decoded, err := hex.DecodeString(strings.TrimPrefix(v, "0x"))
	if err != nil {
		logger.Fatal(err)
	}
	return decoded
}
