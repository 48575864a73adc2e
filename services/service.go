package services

import (
	"fmt"
	"sync"

	"github.com/jinzhu/gorm"
)

// Service agrupa os casos de uso que tocam banco. Instanciar por request é
// barato; os mutexes por coleção são globais do pacote justamente para que
// instâncias diferentes serializem as mesmas operações.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

type collectionLock struct {
	mu   sync.Mutex
	refs int
}

var (
	locksMu sync.Mutex
	locks   = map[string]*collectionLock{}
)

// lockCollection serializa renumerações e reordenações por coleção-pai.
// Atualizações linha a linha sob escritores concorrentes produziriam
// sequências de ordenação com buracos ou duplicatas; o mutex por chave,
// somado à transação, impede o entrelaçamento. A entrada é contada por
// referência e removida do mapa no último unlock, então o mapa não cresce
// com o número de formulários já tocados.
func lockCollection(key string) func() {
	locksMu.Lock()
	l, ok := locks[key]
	if !ok {
		l = &collectionLock{}
		locks[key] = l
	}
	l.refs++
	locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(locks, key)
		}
		locksMu.Unlock()
	}
}

func formKey(id int64) string    { return fmt.Sprintf("form:%d", id) }
func sectionKey(id int64) string { return fmt.Sprintf("section:%d", id) }
