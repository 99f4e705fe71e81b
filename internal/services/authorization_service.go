package services

import (
	"fmt"

	"github.com/Rathore23/auth-microservice/domain"
	"go.uber.org/zap"
)

// ResourceProduct is the casbin object name for products
const ResourceProduct = "product"

// Predicate names one independent permission check
type Predicate string

const (
	// AllowAny passes for everyone, including anonymous callers
	AllowAny Predicate = "allow_any"
	// RolePolicy passes when the caller's role is granted the action in the policy store
	RolePolicy Predicate = "role_policy"
	// IsOwner passes when the caller owns the target object
	IsOwner Predicate = "is_owner"
	// IsStaff passes for callers with admin-level staff status
	IsStaff Predicate = "is_staff"
	// IsSelf passes when the caller is the target account
	IsSelf Predicate = "is_self"
)

// Rule is satisfied when any of its predicates passes
type Rule []Predicate

// ProductRules is the permission table for products. Actions not listed fall back to ProductDefaultRule.
var ProductRules = map[domain.Action]Rule{
	domain.ActionList:          {AllowAny},
	domain.ActionRetrieve:      {AllowAny},
	domain.ActionCreate:        {RolePolicy},
	domain.ActionPartialUpdate: {IsOwner, RolePolicy, IsStaff},
	domain.ActionDestroy:       {IsOwner, RolePolicy, IsStaff},
}

// ProductDefaultRule guards every product action missing from ProductRules
var ProductDefaultRule = Rule{IsStaff}

// AccountRules is the permission table for self-service accounts. Unlisted actions are denied.
var AccountRules = map[domain.Action]Rule{
	domain.ActionRetrieve:      {IsSelf},
	domain.ActionPartialUpdate: {IsSelf},
	domain.ActionDestroy:       {IsSelf},
}

// check is the input every predicate sees
type check struct {
	caller   *domain.Caller
	resource string
	action   domain.Action
	ownerID  uint
	targetID uint
}

// AuthorizationServiceImpl implements domain.Authorizer over the rule tables
type AuthorizationServiceImpl struct {
	policySvc domain.PolicyService
	logger    *zap.Logger
}

// NewAuthorizationService creates the authorization engine
func NewAuthorizationService(policySvc domain.PolicyService, logger *zap.Logger) *AuthorizationServiceImpl {
	return &AuthorizationServiceImpl{policySvc: policySvc, logger: logger}
}

// AuthorizeProduct implements domain.Authorizer
func (a *AuthorizationServiceImpl) AuthorizeProduct(caller *domain.Caller, action domain.Action, product *domain.Product) error {
	rule, ok := ProductRules[action]
	if !ok {
		rule = ProductDefaultRule
	}
	c := check{caller: caller, resource: ResourceProduct, action: action}
	if product != nil {
		c.ownerID = product.OwnerID
	}
	return a.decide(rule, c)
}

// AuthorizeAccount implements domain.Authorizer
func (a *AuthorizationServiceImpl) AuthorizeAccount(caller *domain.Caller, action domain.Action, targetID uint) error {
	return a.decide(AccountRules[action], check{caller: caller, resource: "account", action: action, targetID: targetID})
}

func (a *AuthorizationServiceImpl) decide(rule Rule, c check) error {
	for _, p := range rule {
		ok, err := a.eval(p, c)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", p, err)
		}
		if ok {
			return nil
		}
	}
	if c.caller == nil {
		return domain.ErrUnauthenticated
	}
	a.logger.Debug("permission denied",
		zap.Uint("user_id", c.caller.UserID),
		zap.String("resource", c.resource),
		zap.String("action", string(c.action)),
	)
	return domain.ErrPermissionDenied
}

func (a *AuthorizationServiceImpl) eval(p Predicate, c check) (bool, error) {
	if p == AllowAny {
		return true, nil
	}
	if c.caller == nil {
		return false, nil
	}
	switch p {
	case RolePolicy:
		if c.caller.Role == domain.RoleNone {
			return false, nil
		}
		return a.policySvc.CheckPermission(string(c.caller.Role), c.resource, string(c.action))
	case IsOwner:
		return c.ownerID != 0 && c.ownerID == c.caller.UserID, nil
	case IsStaff:
		return c.caller.IsStaff, nil
	case IsSelf:
		return c.targetID == c.caller.UserID, nil
	}
	return false, fmt.Errorf("unknown predicate %q", p)
}

var _ domain.Authorizer = (*AuthorizationServiceImpl)(nil)
