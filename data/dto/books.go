package dto

// QsListBooks defines the query strings used for listing books.
type QsListBooks struct {
	Search   string
	Category string
}

// CreateBookRequestBody defines the request body for CreateBook service.
type CreateBookRequestBody struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Category    string `json:"category"`
	Quantity    int32  `json:"quantity"`
	Description string `json:"description"`
}

// UpdateBookRequestBody defines the request body for UpdateBook service. The fields are set
// to a pointer type to allow partial updates based on whether the value is set to nil.
type UpdateBookRequestBody struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	ISBN        *string `json:"isbn"`
	Category    *string `json:"category"`
	Quantity    *int32  `json:"quantity"`
	Description *string `json:"description"`
}
