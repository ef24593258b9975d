package models

// CreateTransactionRequest is the body of POST /transactions. Email, Type
// and Amount are required; Date defaults to the current time when empty.
type CreateTransactionRequest struct {
	Email    string `json:"email"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   Amount `json:"amount"`
	Date     string `json:"date"`
}

// UpdateTransactionRequest carries a partial transaction for
// PUT /transactions/{id}. Nil fields are left untouched. There is
// deliberately no ID field: a record's identity cannot be reassigned.
type UpdateTransactionRequest struct {
	Email    *string `json:"email"`
	Type     *string `json:"type"`
	Category *string `json:"category"`
	Amount   *Amount `json:"amount"`
	Date     *string `json:"date"`
}

// SaveUserRequest is the body of POST /users. Password is optional; when
// empty on update the stored one is retained.
type SaveUserRequest struct {
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ImgURL    string `json:"imgUrl"`
}
