package content

import "strings"

// Alphabet is the 64-character symbol table; a character's index in this
// string is its field element in GF(2^6), per spec.md §6.
const Alphabet = `ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*(){}[]_+-=.,:;/?<>\ `

func init() {
	if len(Alphabet) != 64 {
		panic("content: alphabet must be exactly 64 characters")
	}
}

func alphabetIndex(c byte) (int, bool) {
	i := strings.IndexByte(Alphabet, c)
	if i < 0 {
		return 0, false
	}
	return i, true
}

func alphabetChar(i int) byte {
	return Alphabet[i]
}
