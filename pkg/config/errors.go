package config

import (
	"github.com/utkarsh5026/gitproject/pkg/common/err"
)

const pkgName = "config"

const (
	invalidInput = err.CodeInvalidInput
	malformed    = err.CodeMalformedRecord
	ioFailure    = err.CodeIOFailure
)

func newError(op, code, message string, cause error) *err.Error {
	return err.New(pkgName, code, op, message, cause)
}
