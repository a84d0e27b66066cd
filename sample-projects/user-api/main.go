package main

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	godec "github.com/reoring/godec"
	"github.com/reoring/godec/dsl"
	"github.com/reoring/godec/middleware"
	chimw "github.com/reoring/godec/middleware/chi"
)

// User represents a user in our system
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Active bool   `json:"active"`
}

// UserPatch carries a partial update. A nil pointer means the request did
// not touch the field; an explicit null behaves the same way.
type UserPatch struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Age    *int64  `json:"age"`
	Active *bool   `json:"active"`
}

// UserStore is a simple in-memory store
type UserStore struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[int]User),
		nextID: 1,
	}
}

func (s *UserStore) Create(user User) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user

	return user
}

func (s *UserStore) GetAll() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (s *UserStore) GetByID(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	return user, exists
}

func (s *UserStore) Update(id int, user User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return false
	}

	user.ID = id
	s.users[id] = user
	return true
}

func (s *UserStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return false
	}

	delete(s.users, id)
	return true
}

// Server holds our application state
type Server struct {
	store    *UserStore
	userDec  godec.Decoder[User]
	patchDec godec.Decoder[UserPatch]
	idDec    godec.Decoder[int]
}

func NewServer() *Server {
	userDec := dsl.MustBind[User](dsl.Object().
		Field("id", dsl.Of[int64](dsl.Default(dsl.Int(), 0))). // ID is assigned by the server
		Field("name", dsl.Of[string](dsl.String())).
		Field("email", dsl.Of[string](dsl.String())).
		Field("age", dsl.Of[int64](dsl.Default(dsl.Int(), 18))).
		Field("active", dsl.Of[bool](dsl.Default(dsl.Bool(), true))))

	patchDec := dsl.MustBind[UserPatch](dsl.Object().
		Field("name", dsl.Of[*string](dsl.Maybe(dsl.String()))).
		Field("email", dsl.Of[*string](dsl.Maybe(dsl.String()))).
		Field("age", dsl.Of[*int64](dsl.Maybe(dsl.Int()))).
		Field("active", dsl.Of[*bool](dsl.Maybe(dsl.Bool()))))

	idDec := dsl.AndThen(dsl.String(), func(s string) godec.Decoder[int] {
		id, err := strconv.Atoi(s)
		if err != nil || id < 1 {
			return dsl.Fail[int]("numeric user id")
		}
		return dsl.Succeed(id)
	})

	return &Server{
		store:    NewUserStore(),
		userDec:  userDec,
		patchDec: patchDec,
		idDec:    idDec,
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.handleRoot)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/users", s.handleGetUsers)
	r.With(chimw.DecodeJSON(s.userDec, godec.DecodeOpt{})).Post("/users", s.handleCreateUser)

	r.Route("/users/{id}", func(r chi.Router) {
		r.Get("/", s.withID(s.handleGetUser))
		r.With(chimw.DecodeJSON(s.patchDec, godec.DecodeOpt{})).Patch("/", s.withID(s.handlePatchUser))
		r.Delete("/", s.withID(s.handleDeleteUser))
	})

	return r
}

// withID decodes the {id} route parameter before the handler runs.
func (s *Server) withID(fn func(w http.ResponseWriter, r *http.Request, id int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := chimw.DecodeURLParam(r, "id", s.idDec)
		if err != nil {
			middleware.WriteJSON(w, http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		fn(w, r, id)
	}
}

func (s *Server) handleGetUsers(w http.ResponseWriter, _ *http.Request) {
	users := s.store.GetAll()
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"count": len(users),
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, _ *http.Request, id int) {
	user, exists := s.store.GetByID(id)
	if !exists {
		middleware.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	user, _ := chimw.Decoded[User](r)
	created := s.store.Create(user)
	middleware.WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePatchUser(w http.ResponseWriter, r *http.Request, id int) {
	existing, exists := s.store.GetByID(id)
	if !exists {
		middleware.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}

	patch, _ := chimw.Decoded[UserPatch](r)

	updated := existing
	var updatedFields []string
	if patch.Name != nil {
		updated.Name = *patch.Name
		updatedFields = append(updatedFields, "name")
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
		updatedFields = append(updatedFields, "email")
	}
	if patch.Age != nil {
		updated.Age = int(*patch.Age)
		updatedFields = append(updatedFields, "age")
	}
	if patch.Active != nil {
		updated.Active = *patch.Active
		updatedFields = append(updatedFields, "active")
	}

	s.store.Update(id, updated)

	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"user":           updated,
		"updated_fields": updatedFields,
	})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, _ *http.Request, id int) {
	if !s.store.Delete(id) {
		middleware.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "godec User API Sample",
		"endpoints": map[string]string{
			"GET /users":         "Get all users",
			"POST /users":        "Create a new user",
			"GET /users/{id}":    "Get user by ID",
			"PATCH /users/{id}":  "Partially update user",
			"DELETE /users/{id}": "Delete user",
			"GET /health":        "Health check",
		},
		"examples": map[string]any{
			"create_user": map[string]any{
				"method": "POST",
				"url":    "/users",
				"body": map[string]any{
					"name":   "Taro",
					"email":  "taro@example.com",
					"age":    30,
					"active": true,
				},
			},
			"partial_update": map[string]any{
				"method": "PATCH",
				"url":    "/users/1",
				"body": map[string]any{
					"name": "Jiro",
				},
				"note": "Fields left out of the body (or sent as null) stay unchanged",
			},
		},
	})
}

func main() {
	server := NewServer()

	// Add some initial data
	server.store.Create(User{Name: "Taro", Email: "taro@example.com", Age: 30, Active: true})
	server.store.Create(User{Name: "Hanako", Email: "hanako@example.com", Age: 25, Active: true})

	log.Println("🚀 godec User API server starting on :8080")
	log.Println("📖 Visit http://localhost:8080 for usage instructions")

	if err := http.ListenAndServe(":8080", server.routes()); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
