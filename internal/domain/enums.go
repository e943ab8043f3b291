package domain

// ResourceType is the kind of external resource attached to a topic.
// The string values are the wire contract and must not change.
type ResourceType string

const (
	ResourceTypeVideo   ResourceType = "video"
	ResourceTypeArticle ResourceType = "article"
	ResourceTypePodcast ResourceType = "podcast"
	ResourceTypeAudio   ResourceType = "audio"
	ResourceTypeImage   ResourceType = "image"
	ResourceTypePDF     ResourceType = "pdf"
)

func (t ResourceType) String() string { return string(t) }

func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceTypeVideo, ResourceTypeArticle, ResourceTypePodcast,
		ResourceTypeAudio, ResourceTypeImage, ResourceTypePDF:
		return true
	}
	return false
}

// ResourceTypes lists every valid resource type, for error messages.
func ResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceTypeVideo, ResourceTypeArticle, ResourceTypePodcast,
		ResourceTypeAudio, ResourceTypeImage, ResourceTypePDF,
	}
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleEditor UserRole = "editor"
	UserRoleViewer UserRole = "viewer"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleEditor, UserRoleViewer:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// PermResource identifies the kind of resource a permission check applies to.
type PermResource string

const (
	PermResourceTopic  PermResource = "topic"
	PermResourceUser   PermResource = "user"
	PermResourceSystem PermResource = "system"
)

func (p PermResource) String() string { return string(p) }

func (p PermResource) IsValid() bool {
	switch p {
	case PermResourceTopic, PermResourceUser, PermResourceSystem:
		return true
	}
	return false
}

// Action represents an operation a user attempts on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}
