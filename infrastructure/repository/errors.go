package repository

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrStorage é o erro genérico de falha de armazenamento. Os detalhes vão
	// para o log; o chamador é responsável pela mensagem ao usuário.
	ErrStorage = errors.New("erro ao realizar operação de armazenamento")

	// ErrDecode indica uma linha com formato inesperado vindo do banco
	// (campo obrigatório ausente ou JSON inválido em coluna estruturada).
	ErrDecode = errors.New("erro ao decodificar registro do banco de dados")
)

func storageError(err error) error {
	return pkgerrors.Wrap(ErrStorage, err.Error())
}

func decodeError(err error) error {
	return pkgerrors.Wrap(ErrDecode, err.Error())
}
