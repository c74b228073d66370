package entity

type Category struct {
	Base
	Name string `db:"name"`
}
