package repository

import (
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repositories/customers"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repositories/interactions"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repositories/invoices"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/dbx"
)

// Transactional mutations rebind the entity repositories to the tx handle,
// the same way the sync pass does.

func newCustomerRepo(db dbx.DBTX) customers.Repository {
	return customers.NewSQLiteRepository(db)
}

func newInvoiceRepo(db dbx.DBTX) invoices.Repository {
	return invoices.NewSQLiteRepository(db)
}

func newInteractionRepo(db dbx.DBTX) interactions.Repository {
	return interactions.NewSQLiteRepository(db)
}
