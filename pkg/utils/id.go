package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID devolve um identificador curto alfanumérico para notificações.
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, 8)
}
