package memory

import "context"

// TxManager выполняет функцию без транзакции
// Атомарность отдельных операций обеспечивают мьютексы репозиториев
type TxManager struct{}

// NewTxManager создает менеджер для хранилища в памяти
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do выполняет fn в текущем контексте
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
