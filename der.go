package sshkeysign

// Just enough DER to present RSA public keys and ECDSA signatures to
// the verification backend; not worth a full ASN.1 dependency.
//
// Integer contents are copied verbatim. SSH mpints already carry the
// leading zero octet when the high bit of the magnitude is set, so the
// output is valid DER for inputs that came off the wire.

const (
	derTagInteger  uint8 = 0x02
	derTagSequence uint8 = 0x30
)

// derLengthLength returns how many octets the long form needs for n.
func derLengthLength(n int) int {
	l := 1
	for n > 255 {
		l++
		n >>= 8
	}
	return l
}

// derBlockLength returns the full encoded size of a block of n content
// octets, including tag and length octets.
func derBlockLength(n int) int {
	if n >= 128 {
		return n + 2 + derLengthLength(n)
	}
	return n + 2
}

// appendDERTag appends a tag octet and the short or long form length.
func appendDERTag(dst []byte, tag uint8, length int) []byte {
	dst = append(dst, tag)
	if length >= 128 {
		l := derLengthLength(length)
		dst = append(dst, 0x80|uint8(l))
		for i := l - 1; i >= 0; i-- {
			dst = append(dst, uint8(length>>(i*8)))
		}
	} else {
		dst = append(dst, uint8(length))
	}
	return dst
}

// encodeRSAPublicKey encodes the PKCS#1 RSAPublicKey structure
// SEQUENCE { INTEGER n, INTEGER e }.
func encodeRSAPublicKey(n, e []byte) []byte {
	nLen := derBlockLength(len(n))
	eLen := derBlockLength(len(e))

	der := make([]byte, 0, derBlockLength(nLen+eLen))
	der = appendDERTag(der, derTagSequence, nLen+eLen)
	der = appendDERTag(der, derTagInteger, len(n))
	der = append(der, n...)
	der = appendDERTag(der, derTagInteger, len(e))
	der = append(der, e...)
	return der
}

// encodeECDSASignature encodes SEQUENCE { INTEGER r, INTEGER s }.
func encodeECDSASignature(r, s []byte) []byte {
	rLen := derBlockLength(len(r))
	sLen := derBlockLength(len(s))

	der := make([]byte, 0, derBlockLength(rLen+sLen))
	der = appendDERTag(der, derTagSequence, rLen+sLen)
	der = appendDERTag(der, derTagInteger, len(r))
	der = append(der, r...)
	der = appendDERTag(der, derTagInteger, len(s))
	der = append(der, s...)
	return der
}
