package sqlinline

const QInsertUser = `--sql 4e9fca76-c327-4df7-a802-76df4f187655
insert into users(id, name, email, password_hash, role, created_at, updated_at)
values (gen_random_uuid(), $1::text, lower($2::text), $3::text, $4::text, now(), now())
returning id;
`

const QSelectUserByEmail = `--sql af267ed0-228e-4ea2-8389-0a74c63b6134
select id, name, email, password_hash, role
from users
where email = lower($1::text);
`

const QSelectUserByID = `--sql fd3241ac-18f0-47b8-8c70-45e6a66981fc
select id, name, email, role, created_at
from users
where id = $1::uuid;
`

const QSetUserRole = `--sql 036a1895-50e0-4325-92f6-027415a35f78
update users
set role = $2::text, updated_at = now()
where email = lower($1::text)
returning id;
`
