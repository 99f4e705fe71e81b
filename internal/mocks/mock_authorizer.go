package mocks

import "github.com/Rathore23/auth-microservice/domain"

// MockAuthorizer implements domain.Authorizer. The default allows everything.
type MockAuthorizer struct {
	AuthorizeProductFunc func(caller *domain.Caller, action domain.Action, product *domain.Product) error
	AuthorizeAccountFunc func(caller *domain.Caller, action domain.Action, targetID uint) error
}

// NewMockAuthorizer creates a new MockAuthorizer with default behaviors
func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{}
}

func (m *MockAuthorizer) AuthorizeProduct(caller *domain.Caller, action domain.Action, product *domain.Product) error {
	if m.AuthorizeProductFunc != nil {
		return m.AuthorizeProductFunc(caller, action, product)
	}
	return nil
}

func (m *MockAuthorizer) AuthorizeAccount(caller *domain.Caller, action domain.Action, targetID uint) error {
	if m.AuthorizeAccountFunc != nil {
		return m.AuthorizeAccountFunc(caller, action, targetID)
	}
	return nil
}

var _ domain.Authorizer = (*MockAuthorizer)(nil)
