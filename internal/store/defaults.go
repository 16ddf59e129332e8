package store

import "github.com/GoSim-25-26J-441/workdesk/internal/records/domain"

// Seed values used when the local cache holds nothing yet.

const DefaultWorkspaceID = "ws-default"

func DefaultCompanyInfo() domain.CompanyInfo {
	return domain.CompanyInfo{
		Name:    "Minha Empresa",
		LogoURL: "/logo.png",
	}
}

func DefaultWorkspaces() []domain.Workspace {
	return []domain.Workspace{{
		ID:          DefaultWorkspaceID,
		Name:        "Geral",
		Description: "Workspace padrão",
	}}
}

func DefaultProjectTemplates() []domain.ProjectTemplate {
	return []domain.ProjectTemplate{{
		ID:   "template-implantacao",
		Name: "Implantação padrão",
		Tasks: []domain.TemplateTask{
			{Title: "Reunião de kickoff", Description: "Alinhar escopo e cronograma com o cliente", Priority: domain.PriorityHigh, DueDayOffset: 0},
			{Title: "Levantamento de requisitos", Description: "Documentar processos atuais", Priority: domain.PriorityHigh, DueDayOffset: 5},
			{Title: "Configuração do ambiente", Description: "Preparar ambiente de homologação", Priority: domain.PriorityMedium, DueDayOffset: 10},
			{Title: "Treinamento", Description: "Treinar usuários-chave", Priority: domain.PriorityMedium, DueDayOffset: 20},
			{Title: "Go-live", Description: "Virada para produção", Priority: domain.PriorityHigh, DueDayOffset: 30},
		},
	}}
}
