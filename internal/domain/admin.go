package domain

type Admin struct {
	Username string `db:"username"`
	Hash     string `db:"password"`
}
