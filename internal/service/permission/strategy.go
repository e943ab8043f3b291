package permission

import "github.com/heartmarshall/knowledgebase/internal/domain"

// rule decides whether a role may perform an action on a resource kind.
type rule func(res domain.PermResource, action domain.Action) bool

// roleRules is the closed role → rule table. There is no runtime
// registration: an unknown role simply has no rule and is denied.
var roleRules = map[domain.UserRole]rule{
	domain.UserRoleAdmin:  adminRule,
	domain.UserRoleEditor: editorRule,
	domain.UserRoleViewer: viewerRule,
}

// adminRule grants every (resource, action) pair.
func adminRule(domain.PermResource, domain.Action) bool { return true }

// editorRule grants create/read/update on topics and read on users.
// Deleting topics and anything touching system settings is denied.
func editorRule(res domain.PermResource, action domain.Action) bool {
	switch res {
	case domain.PermResourceTopic:
		return action != domain.ActionDelete
	case domain.PermResourceUser:
		return action == domain.ActionRead
	}
	return false
}

// viewerRule grants reading topics, nothing else.
func viewerRule(res domain.PermResource, action domain.Action) bool {
	return res == domain.PermResourceTopic && action == domain.ActionRead
}
