package service

import "errors"

var (
	// ErrInvalidCredentials: неверный email или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound: запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken: email уже занят другим пользователем.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidInput: запрос не прошёл проверку (обязательные поля, роль, синтаксис CSV).
	ErrInvalidInput = errors.New("invalid input")
)
