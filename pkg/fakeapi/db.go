package fakeapi

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/matt-steen/todo-client/pkg/model"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

var (
	// ErrTodoNotFound is returned when no todo has the requested id.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrUnknownUser is returned when a todo is created for a user that does not exist.
	ErrUnknownUser = errors.New("unknown user")
)

// Database stores the todos and users served by the stand-in service.
type Database struct {
	conn *sql.DB
}

// NewDatabase connects to the sqlite database at the given filename and initializes the
// structure and seed users if not present.
func NewDatabase(ctx context.Context, filename string) (*Database, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	// sqlite allows a single writer; one connection avoids "database is locked" under load
	conn.SetMaxOpenConns(1)

	database := Database{conn: conn}

	if err := database.initialize(ctx); err != nil {
		conn.Close()

		return nil, err
	}

	return &database, nil
}

func (d *Database) initialize(ctx context.Context) error {
	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := d.conn.ExecContext(ctx, baseSQL); err != nil {
		return fmt.Errorf("error running base sql: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.conn.Close()
}

// Users returns all users ordered by id.
func (d *Database) Users(ctx context.Context) ([]model.User, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT id, name FROM user ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error loading users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}

	for rows.Next() {
		var user model.User

		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}

		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning users: %w", err)
	}

	return users, nil
}

// Todos returns all todos ordered by id.
func (d *Database) Todos(ctx context.Context) ([]model.Todo, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT id, user_id, title, completed FROM todo ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error loading todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}

	for rows.Next() {
		var todo model.Todo

		if err := rows.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Completed); err != nil {
			return nil, fmt.Errorf("error scanning todo: %w", err)
		}

		todos = append(todos, todo)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning todos: %w", err)
	}

	return todos, nil
}

// Todo returns the todo with the given id.
func (d *Database) Todo(ctx context.Context, id int) (model.Todo, error) {
	var todo model.Todo

	err := d.conn.QueryRowContext(
		ctx,
		`SELECT id, user_id, title, completed FROM todo WHERE id = $1`,
		id,
	).Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return todo, ErrTodoNotFound
	}

	if err != nil {
		return todo, fmt.Errorf("error loading todo %d: %w", id, err)
	}

	return todo, nil
}

// NewTodo stores the draft and returns it with its assigned id.
func (d *Database) NewTodo(ctx context.Context, draft model.Draft) (model.Todo, error) {
	var userCount int

	err := d.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM user WHERE id = $1`, draft.UserID).Scan(&userCount)
	if err != nil {
		return model.Todo{}, fmt.Errorf("error looking up user %d: %w", draft.UserID, err)
	}

	if userCount == 0 {
		return model.Todo{}, fmt.Errorf("error adding todo '%s' for user %d: %w", draft.Title, draft.UserID, ErrUnknownUser)
	}

	now := time.Now()

	result, err := d.conn.ExecContext(
		ctx,
		`INSERT INTO todo (user_id, title, completed, created_datetime, updated_datetime)
		     VALUES ($1, $2, $3, $4, $5)`,
		draft.UserID, draft.Title, draft.Completed, now, now,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("error adding todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("error getting id of new todo %s: %w", draft.Title, err)
	}

	return model.Todo{
		ID:        int(id),
		UserID:    draft.UserID,
		Title:     draft.Title,
		Completed: draft.Completed,
	}, nil
}

// SetCompleted updates the completed flag and returns the updated todo.
func (d *Database) SetCompleted(ctx context.Context, id int, completed bool) (model.Todo, error) {
	result, err := d.conn.ExecContext(
		ctx,
		`UPDATE todo SET completed = $1, updated_datetime = $2 WHERE id = $3`,
		completed, time.Now(), id,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("error updating todo %d: %w", id, err)
	}

	if err := expectOneRow(result, id); err != nil {
		return model.Todo{}, err
	}

	return d.Todo(ctx, id)
}

// DeleteTodo removes the todo with the given id.
func (d *Database) DeleteTodo(ctx context.Context, id int) error {
	result, err := d.conn.ExecContext(ctx, `DELETE FROM todo WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting todo %d: %w", id, err)
	}

	return expectOneRow(result, id)
}

func expectOneRow(result sql.Result, id int) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected for todo %d: %w", id, err)
	}

	if affected == 0 {
		return fmt.Errorf("todo %d: %w", id, ErrTodoNotFound)
	}

	return nil
}
