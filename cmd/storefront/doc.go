// Command storefront is the operational CLI for the shop backend.
//
//	storefront serve           # start the HTTP + gRPC server
//	storefront migrate         # run migrations
//	storefront migrate:rollback
//	storefront migrate:status
//	storefront seed            # seed the admin account and demo catalog
//	storefront route:list      # list API routes
//	storefront queue:work      # process background jobs (notification retries)
//	storefront schedule:run    # run periodic maintenance tasks
package main
