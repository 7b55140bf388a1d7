package domain

type Member struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedOn string `json:"created_on"`
}
