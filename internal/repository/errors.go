package repository

import "errors"

var (
	ErrNotFound     = errors.New("задача не найдена")
	ErrMissingStore = errors.New("хранилище не существует")
	ErrCorruptStore = errors.New("хранилище повреждено")
	ErrLockTimeout  = errors.New("не удалось захватить блокировку хранилища")
)
