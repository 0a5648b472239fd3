package confluence

// Deployment tells Confluence Server and Confluence Cloud apart.  Resolved once from config.
type Deployment int

const (
	Server Deployment = iota
	Cloud
)

func DeploymentFor(isCloud bool) Deployment {
	if isCloud {
		return Cloud
	}
	return Server
}

func (d Deployment) String() string {
	switch d {
	case Cloud:
		return "cloud"
	default:
		return "server"
	}
}

// Identify returns the field that names a user on this deployment.  Cloud hides usernames, so we
// compare email addresses there.
func (d Deployment) Identify(u *User) string {
	if u == nil {
		return ""
	}
	if d == Cloud {
		return u.Email
	}
	return u.Username
}
