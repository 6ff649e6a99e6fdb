package service

import (
	"orderhub/internal/order/core/domain"
	"orderhub/internal/pkg/auth"
)

// Policy holds the access-control decisions for order operations.
// Admin authority is a strict superset of client authority for reads.
type Policy struct{}

// CanCreate: clients and admins may place orders.
func (Policy) CanCreate(a auth.Actor) bool {
	return a.Roles.Has(auth.RoleClient) || a.Roles.Has(auth.RoleAdmin)
}

// CanReadOwn: clients and admins may list their own orders.
func (Policy) CanReadOwn(a auth.Actor) bool {
	return a.Roles.Has(auth.RoleClient) || a.Roles.Has(auth.RoleAdmin)
}

// CanListAll: only admins may list every order.
func (Policy) CanListAll(a auth.Actor) bool {
	return a.IsAdmin()
}

// CanRead: admins may read any order, everyone else only their own.
func (Policy) CanRead(a auth.Actor, order *domain.Order) bool {
	return a.IsAdmin() || a.SubjectID == order.OwnerID
}
