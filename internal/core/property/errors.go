package property

import "errors"

var (
	// ErrPropertyNotFound は施設が存在しない場合に返却されます。
	ErrPropertyNotFound = errors.New("property: not found")
	// ErrLastProperty は最後の 1 件を削除しようとした場合に返却されます。
	ErrLastProperty = errors.New("property: cannot delete the last property")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("property: invalid id")
	// ErrInvalidName は施設名が不正な場合に返却されます。
	ErrInvalidName = errors.New("property: invalid name")
	// ErrInvalidRooms は客室数が負の場合に返却されます。
	ErrInvalidRooms = errors.New("property: invalid rooms")
	// ErrInvalidSettings は設定値が不正な場合に返却されます。
	ErrInvalidSettings = errors.New("property: invalid settings")
	// ErrKeyNotFound はキーが保存されていない場合に Store が返却します。
	ErrKeyNotFound = errors.New("property: key not found")
)
