// internal/authz/policy.go
package authz

import "rating-system/internal/entities"

type Resource string

const (
	ResourceCategory Resource = "category"
	ResourceGenre    Resource = "genre"
	ResourceTitle    Resource = "title"
	ResourceReview   Resource = "review"
	ResourceComment  Resource = "comment"
	ResourceUser     Resource = "user"
	ResourceReport   Resource = "report"
)

type Action string

const (
	ActionList          Action = "list"
	ActionCreate        Action = "create"
	ActionRetrieve      Action = "retrieve"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// Actor — действующая сторона запроса. Нулевой ID означает анонима.
type Actor struct {
	ID   uint64
	Role string
}

func (a Actor) IsAuthenticated() bool {
	return a.ID != 0
}

func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated() && a.Role == entities.RoleAdmin
}

func (a Actor) IsModerator() bool {
	return a.IsAuthenticated() && a.Role == entities.RoleModerator
}

// Decision — предикат доступа; ownerID — владелец целевого ресурса (0, если владельца нет).
type Decision func(actor Actor, ownerID uint64) bool

func allowAny(Actor, uint64) bool {
	return true
}

func adminOnly(actor Actor, _ uint64) bool {
	return actor.IsAdmin()
}

func authenticatedOnly(actor Actor, _ uint64) bool {
	return actor.IsAuthenticated()
}

// ownerOrStaff: автор ресурса, модератор или админ.
func ownerOrStaff(actor Actor, ownerID uint64) bool {
	if !actor.IsAuthenticated() {
		return false
	}
	return actor.ID == ownerID || actor.IsModerator() || actor.IsAdmin()
}

// catalogRules: публичное чтение, запись только админом.
var catalogRules = map[Action]Decision{
	ActionList:          allowAny,
	ActionRetrieve:      allowAny,
	ActionCreate:        adminOnly,
	ActionPartialUpdate: adminOnly,
	ActionDestroy:       adminOnly,
}

// feedbackRules: создание аутентифицированными, правка владельцем или персоналом.
var feedbackRules = map[Action]Decision{
	ActionList:          allowAny,
	ActionRetrieve:      allowAny,
	ActionCreate:        authenticatedOnly,
	ActionPartialUpdate: ownerOrStaff,
	ActionDestroy:       ownerOrStaff,
}

var adminRules = map[Action]Decision{
	ActionList:          adminOnly,
	ActionRetrieve:      adminOnly,
	ActionCreate:        adminOnly,
	ActionPartialUpdate: adminOnly,
	ActionDestroy:       adminOnly,
}

var rules = map[Resource]map[Action]Decision{
	ResourceCategory: catalogRules,
	ResourceGenre:    catalogRules,
	ResourceTitle:    catalogRules,
	ResourceReview:   feedbackRules,
	ResourceComment:  feedbackRules,
	ResourceUser:     adminRules,
	ResourceReport:   adminRules,
}

// Can решает, разрешено ли действующей стороне действие над ресурсом.
// Любая комбинация вне таблицы запрещена.
func Can(actor Actor, action Action, resource Resource, ownerID uint64) bool {
	actions, ok := rules[resource]
	if !ok {
		return false
	}
	decision, ok := actions[action]
	if !ok {
		return false
	}
	return decision(actor, ownerID)
}
