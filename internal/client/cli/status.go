package cli

import "fmt"

func (a *App) getStatus() string {
	s := ""
	if creds, ok := a.session.Current(); ok {
		name := creds.User.Name
		if name == "" {
			name = creds.User.Email
		}
		s = name + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) prompt() string {
	return fmt.Sprintf("spa %s %s> ", a.Route(), a.getStatus())
}
