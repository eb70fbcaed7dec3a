package parser

import "strings"

func renderOptionalTunnel(tunnel *string) string {
	if tunnel == nil {
		return ""
	}
	return " TUNNEL " + *tunnel
}

func renderOptionalCredentials(credentials *string) string {
	if credentials == nil {
		return ""
	}
	return " CREDENTIALS " + *credentials
}

func renderOptions(opts *StmtOptions) string {
	if opts == nil || opts.Len() == 0 {
		return ""
	}
	return " " + opts.Render()
}

func join(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "")
}

func (s *CreateExternalTable) Render() string {
	head := "CREATE "
	if s.OrReplace {
		head += "OR REPLACE "
	}
	head += "EXTERNAL TABLE "
	if s.IfNotExists {
		head += "IF NOT EXISTS "
	}
	return join(head, s.Name.String(), " FROM ", s.Datasource,
		renderOptionalTunnel(s.Tunnel), renderOptionalCredentials(s.Credentials), renderOptions(s.Options))
}

func (s *CreateExternalDatabase) Render() string {
	head := "CREATE "
	if s.OrReplace {
		head += "OR REPLACE "
	}
	head += "EXTERNAL DATABASE "
	if s.IfNotExists {
		head += "IF NOT EXISTS "
	}
	return join(head, s.Name, " FROM ", s.Datasource,
		renderOptionalTunnel(s.Tunnel), renderOptionalCredentials(s.Credentials), renderOptions(s.Options))
}

func (s *DropDatabase) Render() string {
	head := "DROP DATABASE "
	if s.IfExists {
		head += "IF EXISTS "
	}
	return head + strings.Join(s.Names, ", ")
}

func (s *AlterDatabaseRename) Render() string {
	return join("ALTER DATABASE ", s.Name, " RENAME TO ", s.NewName)
}

func (s *CreateTunnel) Render() string {
	head := "CREATE TUNNEL "
	if s.IfNotExists {
		head += "IF NOT EXISTS "
	}
	return join(head, s.Name, " FROM ", s.TunnelType, renderOptions(s.Options))
}

func (s *DropTunnel) Render() string {
	head := "DROP TUNNEL "
	if s.IfExists {
		head += "IF EXISTS "
	}
	return head + strings.Join(s.Names, ", ")
}

func (s *AlterTunnel) Render() string {
	head := "ALTER TUNNEL "
	if s.IfExists {
		head += "IF EXISTS "
	}
	head += s.Name
	switch s.Action {
	case TunnelActionRotateKeys:
		head += " ROTATE KEYS"
	}
	return head
}

func (s *CreateCredentials) Render() string {
	out := join("CREATE CREDENTIALS ", s.Name, " PROVIDER ", s.Provider, renderOptions(s.Options))
	if s.Comment != nil {
		out = join(out, " COMMENT '", strings.ReplaceAll(*s.Comment, "'", "''"), "'")
	}
	return out
}

func (s *DropCredentials) Render() string {
	head := "DROP CREDENTIALS "
	if s.IfExists {
		head += "IF EXISTS "
	}
	return head + strings.Join(s.Names, ", ")
}

func (s *CopyTo) Render() string {
	var source string
	if s.Source.Table != nil {
		source = s.Source.Table.String()
	} else {
		source = "(" + *s.Source.Query + ")"
	}
	out := join("COPY ", source, " TO ", "'"+strings.ReplaceAll(s.Dest, "'", "''")+"'")
	if s.Format != nil {
		out = join(out, " FORMAT ", *s.Format)
	}
	out = join(out, renderOptionalCredentials(s.Credentials), renderOptions(s.Options))
	return out
}
