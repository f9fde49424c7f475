package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"medical-agenda/internal/auth"
	"medical-agenda/internal/middleware"
	"medical-agenda/internal/model"
	"medical-agenda/internal/service"
)

type UserUseCase interface {
	Create(ctx context.Context, req service.UserRequest) (*service.UserView, error)
	Get(ctx context.Context, id int64) (*service.UserView, error)
	List(ctx context.Context) ([]service.UserView, error)
	Update(ctx context.Context, id int64, req service.UserRequest) (*service.UserView, error)
	Delete(ctx context.Context, id int64) error
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	ListSpecialties(ctx context.Context) ([]model.Specialty, error)
}

type UserHandler struct {
	svc      UserUseCase
	log      *slog.Logger
	secret   string
	tokenTTL time.Duration
}

// NewUserHandler wires the user routes. The login route is only exposed
// when secret is set.
func NewUserHandler(svc UserUseCase, log *slog.Logger, secret string, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{svc: svc, log: log, secret: secret, tokenTTL: tokenTTL}
}

func (h *UserHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/usuarios")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.get)
		g.PUT("/:id", middleware.RequireRole(true, staff...), h.update)
		g.DELETE("/:id", middleware.RequireRole(false, staff...), h.delete)
	}
	r.GET("/api/roles", h.roles)
	r.GET("/api/especialidades", h.specialties)
	if h.secret != "" {
		r.POST("/api/auth/login", h.login)
	}
}

// staff roles may manage any user
var staff = []string{string(model.UserTypeAdmin), auth.ServiceRole}

// checkTypeChange rejects ADMIN grants, and type changes on update, from
// callers without a staff token. current is empty on create.
func (h *UserHandler) checkTypeChange(c *gin.Context, requested string, current model.UserType) error {
	if h.secret == "" || middleware.HasRole(middleware.ClaimsFromContext(c.Request.Context()), staff...) {
		return nil
	}
	t := model.ParseUserType(requested)
	if t == model.UserTypeAdmin {
		return fmt.Errorf("%w: only staff can grant %s", model.ErrForbidden, t)
	}
	if current != "" && t != current {
		return fmt.Errorf("%w: only staff can change the user type", model.ErrForbidden)
	}
	return nil
}

type userRequest struct {
	Name        string `json:"nombre" binding:"required"`
	Email       string `json:"correo" binding:"required,email"`
	Password    string `json:"contrasena"`
	Type        string `json:"tipo" binding:"required"`
	SpecialtyID *int64 `json:"especialidadId"`
	RoleID      *int64 `json:"rolId"`
}

func (r userRequest) toService() service.UserRequest {
	return service.UserRequest{
		Name:        r.Name,
		Email:       r.Email,
		Password:    r.Password,
		Type:        r.Type,
		SpecialtyID: r.SpecialtyID,
		RoleID:      r.RoleID,
	}
}

type userDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Email       string  `json:"correo"`
	Type        string  `json:"tipo"`
	RoleID      *int64  `json:"rolId"`
	Role        *string `json:"rol"`
	SpecialtyID *int64  `json:"especialidadId"`
	Specialty   *string `json:"especialidad"`
}

func toUserDTO(v *service.UserView) userDTO {
	dto := userDTO{ID: v.ID, Name: v.Name, Email: v.Email}
	if v.Profile != nil {
		dto.Type = string(v.Profile.Type())
		dto.RoleID = v.Profile.RoleID()
		dto.SpecialtyID = v.Profile.SpecialtyID()
	}
	if v.Role != nil {
		dto.Role = &v.Role.Name
	}
	if v.Specialty != nil {
		dto.Specialty = &v.Specialty.Name
	}
	return dto
}

type referenceDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

func (h *UserHandler) create(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.checkTypeChange(c, req.Type, ""); err != nil {
		writeError(c, h.log, err)
		return
	}
	v, err := h.svc.Create(c.Request.Context(), req.toService())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje": "user registered",
		"usuario": toUserDTO(v),
	})
}

func (h *UserHandler) list(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]userDTO, len(users))
	for i := range users {
		out[i] = toUserDTO(&users[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(v))
}

func (h *UserHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}
	if h.secret != "" {
		current, err := h.svc.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		var t model.UserType
		if current.Profile != nil {
			t = current.Profile.Type()
		}
		if err := h.checkTypeChange(c, req.Type, t); err != nil {
			writeError(c, h.log, err)
			return
		}
	}
	v, err := h.svc.Update(c.Request.Context(), id, req.toService())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje": "user updated",
		"usuario": toUserDTO(v),
	})
}

func (h *UserHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "user deleted"})
}

func (h *UserHandler) roles(c *gin.Context) {
	roles, err := h.svc.ListRoles(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]referenceDTO, len(roles))
	for i, r := range roles {
		out[i] = referenceDTO{ID: r.ID, Name: r.Name}
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) specialties(c *gin.Context) {
	specialties, err := h.svc.ListSpecialties(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]referenceDTO, len(specialties))
	for i, sp := range specialties {
		out[i] = referenceDTO{ID: sp.ID, Name: sp.Name}
	}
	c.JSON(http.StatusOK, out)
}

type loginRequest struct {
	Email    string `json:"correo" binding:"required"`
	Password string `json:"contrasena" binding:"required"`
}

func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	role := ""
	if u.Profile != nil {
		role = string(u.Profile.Type())
	}
	tok, err := auth.MakeToken(strconv.FormatInt(u.ID, 10), role, h.secret, h.tokenTTL)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok, "usuarioId": u.ID, "nombre": u.Name})
}
