/*
Package welfare is the application service in front of the ledger store.

It adds what the store itself does not care about: context handling, read
authorization for the query endpoints, metrics, structured logging of
rejected operations, write-through of settled rows to the relational store,
and dirty notifications for the snapshot worker.

Usage:

	store := ledger.New(ledger.Options{})
	svc := welfare.NewService(store, repositories.NewRecorder(db), worker, nil)

	result, err := svc.DistributePoints(ctx, sess, []ledger.Distribution{
	    {EmployeeID: "emp_1", Points: 500},
	})

	tx, err := svc.BookService(ctx, sess, "emp_1", "srv_1")
	issued, err := svc.GenerateQR(ctx, sess, "emp_1", "srv_1")
	done, err := svc.ValidateQR(ctx, partnerSess, issued.Payload, "prt_1")

Errors are the domain sentinels from internal/errors, wrapped with context.
*/
package welfare
