package utils

import "math/rand"

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"

// NewID generates a 21-character random id for collection records.
func NewID() string {
	return GenerateRandomToken(21)
}

func GenerateRandomToken(length int) string {
	token := make([]byte, length)
	for i := range token {
		token[i] = idCharset[rand.Intn(len(idCharset))]
	}
	return string(token)
}
