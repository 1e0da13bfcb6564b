package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const protocolAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateProtocol gera o código curto de protocolo exibido ao usuário no
// acompanhamento de denúncias. O alfabeto exclui caracteres ambíguos.
func GenerateProtocol() (string, error) {
	return gonanoid.Generate(protocolAlphabet, 8)
}
