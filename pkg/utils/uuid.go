package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 6

	// sessões vivem só em memória e precisam de mais entropia que as entidades
	sessionIDLength = 16
)

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}

func GenerateSessionID() (string, error) {
	return gonanoid.Generate(characters, sessionIDLength)
}

// MustGenerateID é usado em seeds e scripts, onde falhar ao gerar id é irrecuperável
func MustGenerateID() string {
	id, err := GenerateID()
	if err != nil {
		panic(err)
	}
	return id
}
