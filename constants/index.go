package constants

// Status de promoção
const (
	PROMOTION_STATUS_INACTIVE = "inactive"
	PROMOTION_STATUS_ACTIVE   = "active"
	PROMOTION_STATUS_CLOSED   = "closed"
)

var PROMOTION_STATUSES = []string{
	PROMOTION_STATUS_INACTIVE,
	PROMOTION_STATUS_ACTIVE,
	PROMOTION_STATUS_CLOSED,
}

// Mensagens de erro / validação
const (
	ERROR_INTERNAL_ERROR       = "Erro interno do servidor"
	ERROR_INPUT                = "Dados de entrada inválidos"
	ERROR_PARSE_DATA_TO_LOCALS = "Falha ao ler dados validados da requisição"
	DATA_INPUT_IS_NOT_NUMBER   = "O parâmetro informado não é um número"

	MISSING_LOGIN_INPUT   = "Informe email e senha"
	INVALID_CREDENTIALS   = "Email ou senha incorretos"
	ACCOUNT_NOT_ACTIVE    = "Usuário inativo"
	EMAIL_ALREADY_EXISTS  = "Email já registrado no sistema"
	CAN_NOT_HASH_PASSWORD = "Não foi possível processar a senha"

	// Um único texto cobre "não existe" e "pertence a outro usuário":
	// o chamador nunca descobre dados de outras contas.
	PROMOTION_NOT_FOUND   = "Promoção não encontrada ou você não tem permissão para acessá-la"
	PARTICIPANT_NOT_FOUND = "Participante não encontrado ou você não tem permissão para acessá-lo"
	DRAW_NOT_FOUND        = "Sorteio não encontrado ou você não tem permissão para acessá-lo"

	PARTICIPANT_PHONE_EXISTS = "Participante com este telefone já está cadastrado nesta promoção"
	PROMOTION_NOT_ACTIVE     = "Não é possível criar sorteios para promoções inativas"
	DRAW_ALREADY_EXECUTED    = "Este sorteio já foi executado anteriormente"
	DRAW_HAS_WINNERS         = "Não é possível alterar um sorteio que já possui ganhadores"
	DRAW_NO_PARTICIPANTS     = "Não há participantes cadastrados nesta promoção para realizar o sorteio"
)
