package consensus

import (
	"encoding/hex"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/tempo-io/bridge-go/common"
)

// Finalization certificate layout:
//
//	[epoch:varint][view:varint][digest:32][signature:48][seed_signature:48]
//
// The leading varints are 1-10 bytes each depending on magnitude, so offsets
// from the front are unstable; the trailing 96 bytes are always the two
// 48-byte compressed G1 signatures.
const (
	compressedG1Len   = 48
	minCertificateLen = 1 + 1 + 32 + 2*compressedG1Len
)

// ErrECDSAModeUnimplemented is returned by FormatSignaturesForLightClient in
// ECDSA mode, which has no wire format yet.
var ErrECDSAModeUnimplemented = errors.New("ecdsa signature formatting for the light client is not implemented")

// ExtractBLSSignatureFromCertificate pulls the BLS threshold signature out
// of a hex-encoded finalization certificate (0x prefix optional). The
// signature is the 48 bytes at len-96, immediately before the trailing seed
// signature, regardless of the varint widths up front.
//
// The result is a compressed G1 point. The EIP-2537 precompiles expect the
// 128-byte uncompressed form; decompression is the caller's problem, either
// off-chain with a BLS12-381 library or inside the verifying contract.
func ExtractBLSSignatureFromCertificate(certificateHex string) ([]byte, error) {
	raw, err := hex.DecodeString(common.Trim0xPrefix(certificateHex))
	if err != nil {
		return nil, fmt.Errorf("certificate is not valid hex: %w", err)
	}

	if len(raw) < minCertificateLen {
		return nil, fmt.Errorf("certificate too short: expected at least %d bytes, got %d",
			minCertificateLen, len(raw))
	}

	start := len(raw) - 2*compressedG1Len
	sig := make([]byte, compressedG1Len)
	copy(sig, raw[start:start+compressedG1Len])

	logger.WithFields(logger.Fields{
		"certificate_len": len(raw),
		"signature_start": start,
	}).Debug("extracted BLS signature from certificate")

	return sig, nil
}

// FormatSignaturesForLightClient prepares the signature argument for the
// light client's submitHeader call. BLS mode forwards the certificate's
// threshold signature. ECDSA mode errs instead of handing back bytes a
// caller could mistake for a signature.
func FormatSignaturesForLightClient(cert *CertifiedBlock, useECDSAMode bool) ([]byte, error) {
	if useECDSAMode {
		return nil, ErrECDSAModeUnimplemented
	}
	return ExtractBLSSignatureFromCertificate(cert.Certificate)
}
