package sqlinline

const QInsertClub = `--sql 2b150a24-6e16-45fa-867d-9cb1db973d52
insert into clubs(id, owner_id, name, college, description, verification_status, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::text, 'pending', now(), now())
returning id;
`

const QListVerifiedClubs = `--sql e66d9065-2e1f-43a8-a3d6-a76033608925
select id, owner_id, name, college, description, verification_status, created_at
from clubs
where verification_status = 'verified'
order by created_at desc
limit $1::int;
`

const QUpdateClubVerification = `--sql 6dcd248a-ccb3-4cb0-b343-bb4635ec09fe
update clubs
set verification_status = $2::text, updated_at = now()
where id = $1::uuid;
`
