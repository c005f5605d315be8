package domain

// User representa um cliente ou operador da loja.
// Password só existe no armazenamento; leituras do serviço o removem.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password,omitempty"`
	Role     UserRole `json:"role"`
}

// WithoutPassword devolve uma cópia do usuário sem a senha.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// UserRole determina a visibilidade das rotas administrativas.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

// Valid informa se o papel é conhecido.
func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleManager || r == RoleAdmin
}

// CanAccessAdmin informa se o papel enxerga o painel administrativo.
func (r UserRole) CanAccessAdmin() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanAccessSettings informa se o papel enxerga as configurações (apenas admin).
func (r UserRole) CanAccessSettings() bool {
	return r == RoleAdmin
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest é o payload de login da sessão.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse devolve o usuário logado e um token para as rotas administrativas.
type LoginResponse struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// CustomerDetail é o cliente com o histórico de pedidos, usado no painel.
type CustomerDetail struct {
	User   User    `json:"user"`
	Orders []Order `json:"orders"`
}
