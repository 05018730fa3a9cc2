// Package supabase talks to the Supabase PostgREST endpoint that stores
// marketplace listings. Every operation issues exactly one outbound HTTP
// call and maps its outcome into a uniform success/error envelope; the
// table itself (auth, row-level security, persistence) is owned by
// Supabase.
//
// Listing schema (current): id and created_at are server-assigned;
// title is the only required field; price and stock are nullable
// non-negative integers; status is one of draft/active/sold/inactive
// and defaults to "active" on insert; metadata is an open JSONB
// document (vehicle attributes such as brand/model/year live there).
// An earlier generation of the table used product_name/brand/clean_price
// columns; that schema is fully superseded and not supported here.
package supabase
