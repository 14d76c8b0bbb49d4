package iching

import "github.com/ashokshau/iching/internal/content"

// Alphabet is the 64-character symbol table; a character's index in this
// string is its field element in GF(2^6). Exactly as spec.md §6 specifies.
const Alphabet = content.Alphabet
