package model

// Todo is a task as the remote service returns it. ID is assigned by the server.
type Todo struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Draft is the payload for a todo that has not been created yet, so it has no id.
type Draft struct {
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// User owns todos. Users are read-only for the client.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CompletedPatch is the body of a completion update.
type CompletedPatch struct {
	Completed bool `json:"completed"`
}
