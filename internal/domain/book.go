package domain

type Book struct {
	ID        int32  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	CreatedOn string `json:"created_on"`
}
