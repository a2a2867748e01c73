package models

// PasswordRecord is a stored vault row. EncryptedSecret never holds plaintext.
type PasswordRecord struct {
	ID              int64
	UserID          int64
	Label           string
	EncryptedSecret string
}

// PasswordView is a decrypted vault row handed to the owner's session.
type PasswordView struct {
	ID     int64
	Label  string
	Secret string
}
