package auth

// User-facing messages. The product copy is pt-BR; the messages are shown
// verbatim by the screens.
const (
	msgRequiredFields     = "Por favor, preencha todos os campos obrigatórios."
	msgUsernameTooShort   = "O nome de usuário deve ter no mínimo 3 caracteres."
	msgUsernameWhitespace = "O nome de usuário não pode conter espaços."
	msgPasswordMismatch   = "As senhas não coincidem."
	msgPasswordTooShort   = "A senha deve ter no mínimo 8 caracteres."
	msgInvalidEmail       = "Por favor, insira um e-mail válido."
	msgInvalidNationalID  = "Por favor, insira um CPF válido (apenas 11 números)."
	msgInvalidPhone       = "Por favor, insira um número de WhatsApp válido (apenas números, 10 a 15 dígitos)."

	msgMissingLoginFields = "Preencha CPF e senha."
	msgInvalidCredentials = "CPF ou senha incorretos."

	msgDuplicateNationalID = "Este CPF já está cadastrado. Tente fazer login."
	msgDuplicateUsername   = "Este nome de usuário já está em uso."

	msgNoSession    = "Nenhum usuário logado. Por favor, faça login novamente."
	msgUserNotFound = "Conta não encontrada. Por favor, faça login novamente."

	msgStorageFailure = "Não foi possível acessar o armazenamento do dispositivo."
	msgGenericFailure = "Ocorreu um erro inesperado. Tente novamente."
)
