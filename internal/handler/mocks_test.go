package handler

import (
	"context"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/model"
	"Radio_Community/internal/service"
)

type MockPublicationService struct {
	CreateFunc func(ctx context.Context, author identity.Account, in service.PublicationInput) (*model.Publication, error)
	ListFunc   func(ctx context.Context, tipo string) ([]model.Publication, error)
	GetFunc    func(ctx context.Context, id uint64) (*model.PublicationDetail, error)
	UpdateFunc func(ctx context.Context, actor identity.Account, id uint64, patch service.PublicationPatch) (*model.Publication, error)
	DeleteFunc func(ctx context.Context, actor identity.Account, id uint64) (*model.Publication, error)
}

func (m *MockPublicationService) Create(ctx context.Context, author identity.Account, in service.PublicationInput) (*model.Publication, error) {
	return m.CreateFunc(ctx, author, in)
}

func (m *MockPublicationService) List(ctx context.Context, tipo string) ([]model.Publication, error) {
	return m.ListFunc(ctx, tipo)
}

func (m *MockPublicationService) Get(ctx context.Context, id uint64) (*model.PublicationDetail, error) {
	return m.GetFunc(ctx, id)
}

func (m *MockPublicationService) Update(ctx context.Context, actor identity.Account, id uint64, patch service.PublicationPatch) (*model.Publication, error) {
	return m.UpdateFunc(ctx, actor, id, patch)
}

func (m *MockPublicationService) Delete(ctx context.Context, actor identity.Account, id uint64) (*model.Publication, error) {
	return m.DeleteFunc(ctx, actor, id)
}

type MockCommentService struct {
	CreateFunc             func(ctx context.Context, author identity.Account, publicationID uint64, body string) (*model.Comment, error)
	ListForPublicationFunc func(ctx context.Context, publicationID uint64) ([]model.CommentView, error)
	ListAllFunc            func(ctx context.Context) ([]model.CommentView, error)
	DeleteFunc             func(ctx context.Context, actor identity.Account, id uint64) (*model.Comment, error)
}

func (m *MockCommentService) Create(ctx context.Context, author identity.Account, publicationID uint64, body string) (*model.Comment, error) {
	return m.CreateFunc(ctx, author, publicationID, body)
}

func (m *MockCommentService) ListForPublication(ctx context.Context, publicationID uint64) ([]model.CommentView, error) {
	return m.ListForPublicationFunc(ctx, publicationID)
}

func (m *MockCommentService) ListAll(ctx context.Context) ([]model.CommentView, error) {
	return m.ListAllFunc(ctx)
}

func (m *MockCommentService) Delete(ctx context.Context, actor identity.Account, id uint64) (*model.Comment, error) {
	return m.DeleteFunc(ctx, actor, id)
}

type MockContactService struct {
	SendFunc func(ctx context.Context, sender identity.Account, in service.ContactInput) (*model.ContactMessage, error)
	ListFunc func(ctx context.Context) ([]model.ContactMessageView, error)
}

func (m *MockContactService) Send(ctx context.Context, sender identity.Account, in service.ContactInput) (*model.ContactMessage, error) {
	return m.SendFunc(ctx, sender, in)
}

func (m *MockContactService) List(ctx context.Context) ([]model.ContactMessageView, error) {
	return m.ListFunc(ctx)
}

type MockAdminRegistry struct {
	ListFunc   func(ctx context.Context) ([]string, error)
	AddFunc    func(ctx context.Context, caller identity.Account, email string) ([]string, error)
	RemoveFunc func(ctx context.Context, caller identity.Account, email string) error
}

func (m *MockAdminRegistry) List(ctx context.Context) ([]string, error) {
	return m.ListFunc(ctx)
}

func (m *MockAdminRegistry) Add(ctx context.Context, caller identity.Account, email string) ([]string, error) {
	return m.AddFunc(ctx, caller, email)
}

func (m *MockAdminRegistry) Remove(ctx context.Context, caller identity.Account, email string) error {
	return m.RemoveFunc(ctx, caller, email)
}

type MockAuthService struct {
	RegisterFunc func(ctx context.Context, email, password, nombre, code string) (*service.UserView, error)
	LoginFunc    func(ctx context.Context, email, password string) (*service.Session, error)
	RefreshFunc  func(ctx context.Context, refreshToken string) (*service.Session, error)
	LogoutFunc   func(ctx context.Context, acc identity.Account) error
	MeFunc       func(ctx context.Context, acc identity.Account) (*service.UserView, error)
}

func (m *MockAuthService) Register(ctx context.Context, email, password, nombre, code string) (*service.UserView, error) {
	return m.RegisterFunc(ctx, email, password, nombre, code)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.Session, error) {
	return m.RefreshFunc(ctx, refreshToken)
}

func (m *MockAuthService) Logout(ctx context.Context, acc identity.Account) error {
	return m.LogoutFunc(ctx, acc)
}

func (m *MockAuthService) Me(ctx context.Context, acc identity.Account) (*service.UserView, error) {
	return m.MeFunc(ctx, acc)
}

type mockAdminChecker func(ctx context.Context, acc identity.Account) (bool, error)

func (f mockAdminChecker) IsAdmin(ctx context.Context, acc identity.Account) (bool, error) {
	return f(ctx, acc)
}

type MockCodeSender struct {
	SendRegisterCodeFunc func(ctx context.Context, email string) error
}

func (m *MockCodeSender) SendRegisterCode(ctx context.Context, email string) error {
	return m.SendRegisterCodeFunc(ctx, email)
}
