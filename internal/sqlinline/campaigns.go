package sqlinline

const QInsertCampaign = `--sql 0053c9ee-56d8-4432-b0bd-5876dd7c11b4
insert into campaigns(id, owner_id, club_id, title, description, category, goal_amount, amount_raised, status, deadline, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, nullif($2::text, '')::uuid, $3::text, $4::text, $5::text, $6::bigint, 0, 'pending', $7::timestamptz, now(), now())
returning id;
`

const QSelectCampaignByID = `--sql eb72e87d-da26-46cd-abbc-c0ea88f3f7e7
select id, owner_id, club_id, title, description, category, goal_amount, amount_raised, coalesce(cover_url, ''), status, deadline, created_at
from campaigns
where id = $1::uuid;
`

const QListApprovedCampaigns = `--sql 9cd041c1-92e0-4e82-8765-de8134f68f0d
select id, owner_id, club_id, title, description, category, goal_amount, amount_raised, coalesce(cover_url, ''), status, deadline, created_at
from campaigns
where status = 'approved' and ($1::text = '' or category = $1::text)
order by created_at desc
limit $2::int;
`

const QListCampaignsByOwner = `--sql fc1509c3-036a-4ee8-8918-bfd78ae3522c
select id, owner_id, club_id, title, description, category, goal_amount, amount_raised, coalesce(cover_url, ''), status, deadline, created_at
from campaigns
where owner_id = $1::uuid
order by created_at desc;
`

const QUpdateCampaignStatus = `--sql 46e83a80-a3eb-42de-9de2-363d38fe7bdc
update campaigns
set status = $2::text, updated_at = now()
where id = $1::uuid;
`

const QSetCampaignCover = `--sql d2251866-23cf-4411-b59b-9376d214675d
update campaigns
set cover_url = $2::text, updated_at = now()
where id = $1::uuid;
`

const QCompleteExpiredCampaigns = `--sql b7c8e62c-afb4-44fd-9a89-ed2826b15b47
update campaigns
set status = 'completed', updated_at = now()
where status = 'approved' and deadline is not null and deadline < now();
`
