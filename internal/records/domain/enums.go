package domain

// Task workflow states.
const (
	TaskStatusTodo       = "A Fazer"
	TaskStatusInProgress = "Em Andamento"
	TaskStatusDone       = "Concluído"
)

// Task priorities.
const (
	PriorityLow    = "Baixa"
	PriorityMedium = "Média"
	PriorityHigh   = "Alta"
)

// NoTemplate is the template selector meaning "create the project without tasks".
const NoTemplate = "none"
